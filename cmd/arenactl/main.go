// Command arenactl drives a 4 KiB arena from the command line: it replays
// the demonstration scenarios, runs operation scripts, and inspects saved
// snapshots.
package main

func main() {
	execute()
}
