package messaging

import (
	"context"
	"errors"
	"net/url"
	"testing"

	"github.com/stretchr/testify/require"
)

type failingOpener struct {
	calls int
}

func (f *failingOpener) Open(ctx context.Context, link string) error {
	f.calls++
	return errors.New("app not installed")
}

func TestBuildLink(t *testing.T) {
	link := BuildLink(DefaultLinkBase, "15551234567", "2 Burger\n1 Fries & Co")

	require.Equal(t, "whatsapp://send?phone=15551234567&text=2%20Burger%0A1%20Fries%20%26%20Co", link)

	u, err := url.Parse(link)
	require.NoError(t, err)
	require.Equal(t, "15551234567", u.Query().Get("phone"))
	require.Equal(t, "2 Burger\n1 Fries & Co", u.Query().Get("text"))
}

func TestBuildLink_BaseWithQuery(t *testing.T) {
	link := BuildLink("https://api.example.com/send?app=1", "+1 555", "hi")

	require.Equal(t, "https://api.example.com/send?app=1&phone=%2B1%20555&text=hi", link)
}

func TestDispatch_OpensLink(t *testing.T) {
	outbox := NewOutbox()
	d := NewDeepLinkDispatcher("", outbox, nil)

	d.Dispatch(context.Background(), "15551234567", "1 Fries")

	links := outbox.Drain()
	require.Equal(t, []string{"whatsapp://send?phone=15551234567&text=1%20Fries"}, links)
	require.Empty(t, outbox.Drain())
}

func TestDispatch_OpenerFailureIsSwallowed(t *testing.T) {
	opener := &failingOpener{}
	d := NewDeepLinkDispatcher(DefaultLinkBase, opener, nil)

	require.NotPanics(t, func() {
		d.Dispatch(context.Background(), "1", "x")
	})
	require.Equal(t, 1, opener.calls)
}
