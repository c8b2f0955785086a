package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"go-foodorder/models"
)

func TestChooseAddressPrefersDefault(t *testing.T) {
	addresses := []models.Address{
		{ID: "a1", Street: "1 First St"},
		{ID: "a2", Street: "2 Second St", IsDefault: true},
		{ID: "a3", Street: "3 Third St"},
	}

	selected := ChooseAddress(addresses)

	assert.NotNil(t, selected)
	assert.Equal(t, "a2", selected.ID)
}

func TestChooseAddressFallsBackToFirst(t *testing.T) {
	addresses := []models.Address{
		{ID: "a1", Street: "1 First St"},
		{ID: "a2", Street: "2 Second St"},
	}

	selected := ChooseAddress(addresses)

	assert.NotNil(t, selected)
	assert.Equal(t, "a1", selected.ID)
}

func TestChooseAddressNoneSaved(t *testing.T) {
	assert.Nil(t, ChooseAddress(nil))
}

func TestMissingAddressFields(t *testing.T) {
	missing := MissingAddressFields(models.Address{City: "Lagos"})
	assert.Equal(t, []string{"street", "state", "zipCode"}, missing)

	complete := models.Address{Street: "5 Main St", City: "Lagos", State: "LA", ZipCode: "100001"}
	assert.Empty(t, MissingAddressFields(complete))
}
