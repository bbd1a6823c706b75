// Command archivist checks, inspects and previews an archive site.
package main

func main() {
	Execute()
}
