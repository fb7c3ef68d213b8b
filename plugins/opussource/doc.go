// Package opussource is a demo plugin with a single main audio output whose
// channel layout follows a decoded Opus stream.
//
// When the stream switches between mono and stereo while the plugin is
// active, the new layout is held back and a restart is requested. The layout
// is applied on deactivation and the host is told to rescan the channel
// count and port type.
package opussource
