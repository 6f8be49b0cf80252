package riggen

// Version is the riggen release, overridden at build time with
// -ldflags "-X github.com/aretw0/riggen.Version=...".
var Version = "0.1.0-dev"
