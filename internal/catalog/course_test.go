package catalog

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestParseCode(t *testing.T) {
	table := []struct {
		text    string
		subject string
		code    string
		ok      bool
	}{
		{text: "CIS*1300 Programming", subject: "CIS", code: "CIS*1300", ok: true},
		{text: "see ACCT1220 first", subject: "ACCT", code: "ACCT*1220", ok: true},
		{text: "MA*100", ok: false},
		{text: "no code here", ok: false},
	}

	for _, row := range table {
		subject, code, ok := ParseCode(row.text)
		require.Equal(t, row.ok, ok, row.text)
		require.Equal(t, row.subject, subject, row.text)
		require.Equal(t, row.code, code, row.text)
	}
}

func TestNormalizeCode(t *testing.T) {
	require.Equal(t, "CIS*1300", NormalizeCode(" cis1300 "))
	require.Equal(t, "CIS*1300", NormalizeCode("CIS*1300"))
	require.Equal(t, "HELLO", NormalizeCode("hello"))
}
