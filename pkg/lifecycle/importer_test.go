package lifecycle_test

import (
	"testing"

	"github.com/gnames/gnbirds/internal/ioimport"
	"github.com/gnames/gnbirds/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
)

// TestImporterContract ensures that ioimport.New returns a
// lifecycle.Importer. The assignment is a compile-time check.
func TestImporterContract(t *testing.T) {
	var imp lifecycle.Importer = ioimport.New(nil, 1)
	assert.NotNil(t, imp)
}
