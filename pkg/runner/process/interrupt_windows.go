//go:build windows

package process

import "os"

func interrupt(p *os.Process) error {
	return p.Kill()
}
