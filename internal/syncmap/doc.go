// Package syncmap offers a lightweight, generic, concurrency-safe map with
// basic Get/Set/Delete/List operations guarded by a sync.RWMutex.  The tool
// registry is its only client, it stays intentionally minimal.
package syncmap
