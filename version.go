package hackterm

// Version is the library version, overridable at link time with
// -ldflags "-X github.com/aretw0/hackterm.Version=...".
var Version = "0.1.0"
