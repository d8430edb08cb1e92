// Package version exposes the build version string.
package version

// Version is overridable at build time:
//
//	go build -ldflags "-X github.com/amiaverse/amiablog/internal/version.Version=v1.2.3"
var Version = "0.1.0"
