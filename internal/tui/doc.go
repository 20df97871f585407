// Package tui is a terminal mount point built on Bubble Tea.
//
// A Model mounts one target into a mount.Memory, shows the outline of the
// mounted tree and lets the user dispatch its callbacks. Outline is also
// used by the tree command to print composed trees.
package tui
