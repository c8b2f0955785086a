package checkout

import "go-foodorder/models"

// ChooseAddress picks the address checkout pre-selects: the one marked
// default if any, else the first saved address. Nil means the user has no
// saved addresses and must enter one manually.
func ChooseAddress(addresses []models.Address) *models.Address {
	for i := range addresses {
		if addresses[i].IsDefault {
			return &addresses[i]
		}
	}
	if len(addresses) > 0 {
		return &addresses[0]
	}
	return nil
}

// MissingAddressFields lists the empty required fields of an address, in
// the order they are reported to the user.
func MissingAddressFields(addr models.Address) []string {
	var missing []string
	if addr.Street == "" {
		missing = append(missing, "street")
	}
	if addr.City == "" {
		missing = append(missing, "city")
	}
	if addr.State == "" {
		missing = append(missing, "state")
	}
	if addr.ZipCode == "" {
		missing = append(missing, "zipCode")
	}
	return missing
}
