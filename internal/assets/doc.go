// Package assets provides the supplementary stylesheets applied to every
// page before it is printed.
//
// # Loader Architecture
//
//	StyleLoader (interface)
//	    │
//	    ├── EmbeddedLoader    - loads from go:embed filesystem (built-in styles)
//	    ├── FilesystemLoader  - loads from custom directory on disk
//	    └── Resolver          - combines both with custom-first fallback
//
// The built-in styles are "expand" (full policy) and "expand-light" (light
// policy). A custom directory may override either one:
//
//	{basePath}/
//	└── styles/
//	    ├── expand.css
//	    └── expand-light.css
//
// # Security
//
// Style names are validated to prevent path traversal.
// FilesystemLoader resolves symlinks and verifies paths stay within basePath.
package assets
