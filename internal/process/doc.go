// Package process terminates browser process trees left behind by the
// renderer. Chrome spawns helper processes (GPU, renderer, zygote) that do
// not always exit with their parent.
package process
