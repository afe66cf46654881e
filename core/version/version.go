package version

// Version is overridden at build time with -ldflags "-X .../core/version.Version=..."
var Version = "v0.1.0-dev"
