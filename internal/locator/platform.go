package locator

// ForPlatform returns the default table for a GOOS/GOARCH pair.
// Homebrew installs under /opt/homebrew on Apple Silicon and /usr/local on
// Intel Macs, so darwin depends on the architecture.
func ForPlatform(goos, goarch string) Table {
	t := Table{Names: map[string]string{}, Binaries: map[string][]string{}}

	switch goos {
	case "darwin":
		t.Binaries[Chrome] = []string{
			"Google Chrome.app/Contents/MacOS/Google Chrome",
			"Chromium.app/Contents/MacOS/Chromium",
			"chromium",
			"google-chrome",
		}
		t.SearchDirs = []string{"/Applications"}
		if goarch == "arm64" {
			t.SearchDirs = append(t.SearchDirs, "/opt/homebrew/bin", "/opt/homebrew/Caskroom")
		} else {
			t.SearchDirs = append(t.SearchDirs, "/usr/local/bin", "/usr/local/Caskroom")
		}

	case "windows":
		t.Binaries[Chrome] = []string{"chrome.exe"}
		t.SearchDirs = []string{
			`C:\Program Files\Google\Chrome\Application`,
			`C:\Program Files (x86)\Google\Chrome\Application`,
			`C:\Program Files\Chromium\Application`,
		}

	default:
		t.Binaries[Chrome] = []string{
			"google-chrome",
			"google-chrome-stable",
			"chromium",
			"chromium-browser",
			"chrome",
		}
		t.SearchDirs = []string{"/usr/bin", "/usr/local/bin", "/snap/bin", "/opt/google/chrome"}
	}

	return t
}
