package web

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTemplates_ParseAllPages(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	for _, name := range []string{
		"login.html", "register.html", "products.html",
		"add_product.html", "transfer.html", "report_issue.html", "issues.html",
	} {
		assert.NotNil(t, tmpl.Lookup(name), "missing template %s", name)
	}
}

func TestTemplates_RenderProducts(t *testing.T) {
	tmpl, err := Templates()
	require.NoError(t, err)

	var sb strings.Builder
	err = tmpl.ExecuteTemplate(&sb, "products.html", map[string]any{
		"Products": nil,
		"Category": "",
		"Today":    time.Now(),
	})
	require.NoError(t, err)
	assert.Contains(t, sb.String(), "No products yet")
}

func TestExpired(t *testing.T) {
	today := time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC)

	assert.True(t, expired(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), today))
	assert.False(t, expired(time.Date(2024, 1, 10, 0, 0, 0, 0, time.UTC), today), "expires today is not expired yet")
	assert.False(t, expired(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), today))
}

func TestExpiringSoon(t *testing.T) {
	today := time.Date(2024, 1, 10, 15, 0, 0, 0, time.UTC)

	assert.True(t, expiringSoon(time.Date(2024, 1, 12, 0, 0, 0, 0, time.UTC), today))
	assert.False(t, expiringSoon(time.Date(2024, 1, 20, 0, 0, 0, 0, time.UTC), today))
	// Already expired products are not additionally "expiring soon".
	assert.False(t, expiringSoon(time.Date(2024, 1, 5, 0, 0, 0, 0, time.UTC), today))
}
