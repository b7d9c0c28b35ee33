// Command allocbench replays allocation traces against the segalloc
// allocator and reports throughput and peak heap utilization.
package main

func main() {
	execute()
}
