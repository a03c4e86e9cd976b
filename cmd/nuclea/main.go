// Command nuclea opens the marketing page in a window, checks content files
// and runs scripted visual tests.
package main

func main() {
	Execute()
}
