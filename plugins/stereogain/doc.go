// Package stereogain is a demo gain plugin with a stereo main input and
// output processed in place, plus a mono sidechain input whose name can be
// changed while the plugin runs.
package stereogain
