// SPDX-License-Identifier: EPL-2.0

// Command hoapbx renders an ambisonic scene for a listener whose look
// direction changes over time.
package main

func main() {
	Execute()
}
