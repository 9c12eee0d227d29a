// Package commands defines the server CLI.
//
// Commands
//
//   - currency   Serve the currency converter widget
//   - weather    Serve the weather widget
//   - convert    Convert an amount once and print the result
//   - lookup     Look up the weather for a city once, or the last stored city
//
// Every command loads configuration from the environment (and the optional
// --env-file), builds a zap logger and installs the tracer provider before
// running.
package commands
