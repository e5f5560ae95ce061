package app

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAppClose(t *testing.T) {
	var order []string
	a := &App{}
	a.OnClose(func() { order = append(order, "cancel") })
	a.OnClose(func() { order = append(order, "flush") })

	a.Close()
	a.Close()

	assert.Equal(t, []string{"flush", "cancel"}, order)
}
