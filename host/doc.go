// Package host implements the host side of a plugin session: the abi.Host
// table handed to one plugin instance, the extensions the host implements,
// and the host's negotiated view of the plugin.
//
//	opts, err := host.LoadOptions("host.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
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
//
// One Session exists per loaded plugin instance. Extension glue reaches the
// session, and through it the host main thread, from the raw host pointer
// the plugin passes back (FromRaw, Handle).
package host
