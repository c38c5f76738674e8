package booking

// AddToCart appends id unconditionally. Keeping a test id unique in the cart
// is the caller's job: the catalog disables "Book Now" once a test is added.
func AddToCart(cart []string, id string) []string {
	out := make([]string, len(cart), len(cart)+1)
	copy(out, cart)
	return append(out, id)
}

// RemoveFromCart drops every entry matching id.
func RemoveFromCart(cart []string, id string) []string {
	out := make([]string, 0, len(cart))
	for _, item := range cart {
		if item != id {
			out = append(out, item)
		}
	}
	return out
}

// InCart reports whether id is already selected.
func InCart(cart []string, id string) bool {
	for _, item := range cart {
		if item == id {
			return true
		}
	}
	return false
}
