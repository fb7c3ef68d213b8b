// Package clapext implements extension negotiation between an audio host and
// the plugins it loads, over C-compatible function tables.
//
// A host and a plugin each expose a get_extension entry point. Either party
// may ask the other for an optional capability by identifier and, if the
// counterpart answers, receives a pointer to a table of functions. This
// module makes that exchange safe to use from Go:
//
//   - abi holds the C-compatible layouts and string helpers.
//   - extension negotiates tables by identifier, tagging every handle with
//     the side that owns it so a host table can never be cast as a plugin
//     table.
//   - boundary keeps failures on the side that caused them: errors and
//     panics raised while serving a foreign call become the call's failure
//     value.
//   - audioports is the audio ports extension, in which a plugin describes
//     its audio inputs and outputs and notifies the host when they change.
//   - plugin and host wrap the two parties of a session.
//
// # Getting Started
//
// A host loads a plugin and tracks its ports:
//
//	opts := host.NewOptions()
//	tracker, err := audioports.NewTracker(opts)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	session, err := host.NewSession(opts, tracker, audioports.HostImplementation)
//	if err != nil {
//	    log.Fatal(err)
//	}
//	defer session.Close()
//
//	if err := session.Load(stereogain.Entry); err != nil {
//	    log.Fatal(err)
//	}
//	for _, port := range tracker.Ports().Inputs {
//	    fmt.Println(port)
//	}
//
// The portscan command in cmd/portscan does the same for the bundled demo
// plugins and prints the resulting port tables.
package clapext
