/*
Package registry tracks the variable inspector widgets shown next to the console.

Entries are keyed by name: a repeated Upsert updates the existing widget rather
than spawning a second one. RemoveAll is the teardown used on scene unload; it
also destroys transient dropdowns and text fields parented to the container.
*/
package registry
