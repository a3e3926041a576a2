package webui

import (
	"crypto/rand"
	"crypto/subtle"
	"net/http"
	"net/url"

	"github.com/gin-gonic/gin"

	html2pdf "github.com/alnah/go-html2pdf"
)

// TokenHeader carries the per-process API token. The index page embeds the
// token; other origins cannot read it.
const TokenHeader = "X-Html2pdf-Token"

const tokenPlaceholder = "{{API_TOKEN}}"

func newToken() string {
	return rand.Text()
}

// guardAPI rejects requests that did not come from the served page: a
// foreign Origin, a missing or wrong token, or a write that is not JSON.
func guardAPI(token string) gin.HandlerFunc {
	return func(c *gin.Context) {
		if origin := c.GetHeader("Origin"); origin != "" && !sameHost(origin, c.Request.Host) {
			abort(c, http.StatusForbidden, "cross-origin request rejected")
			return
		}
		got := c.GetHeader(TokenHeader)
		if subtle.ConstantTimeCompare([]byte(got), []byte(token)) != 1 {
			abort(c, http.StatusForbidden, "missing or invalid API token")
			return
		}
		if c.Request.Method == http.MethodPost && c.ContentType() != gin.MIMEJSON {
			abort(c, http.StatusUnsupportedMediaType, "Content-Type must be application/json")
			return
		}
		c.Next()
	}
}

func sameHost(origin, host string) bool {
	u, err := url.Parse(origin)
	if err != nil {
		return false
	}
	return u.Host != "" && u.Host == host
}

func abort(c *gin.Context, status int, msg string) {
	html2pdf.Logger().Warn("api request rejected",
		"path", c.Request.URL.Path,
		"status", status,
		"reason", msg)
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}
