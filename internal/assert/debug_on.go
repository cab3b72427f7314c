//go:build griddebug

package assert

const debug = true
