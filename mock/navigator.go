package mock

import "github.com/fwojciec/pageturner"

var _ pageturner.Navigator = (*Navigator)(nil)

// Navigator is a mock implementation of pageturner.Navigator.
type Navigator struct {
	StartURLFn func() string
	NextURLFn  func(current string) (string, error)
}

func (n *Navigator) StartURL() string {
	return n.StartURLFn()
}

func (n *Navigator) NextURL(current string) (string, error) {
	return n.NextURLFn(current)
}
