// Command recipectl manages a local recipe box. Recipes are kept in a
// local store; login and register go to the recipebox API.
package main

import (
	"os"
)

func main() {
	if err := newRootCmd(openApp).Execute(); err != nil {
		os.Exit(1)
	}
}
