// Package app contains the host program. It turns a validated Config into a
// loaded engine, runs graphs, prints their results and serves the HTTP
// inspection API, decoupled from any specific entrypoint like a CLI.
package app
