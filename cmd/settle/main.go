// Command settle computes settling payments for a debt problem file.
//
//	settle solve trip.yaml
//	settle solve trip.yaml --json
package main

func main() {
	Execute()
}
