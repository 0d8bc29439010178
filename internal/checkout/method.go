package checkout

type PurchaseMethod string

const (
	MethodCOD   PurchaseMethod = "COD"
	MethodCard  PurchaseMethod = "CARD"
	MethodOther PurchaseMethod = "OTHER"
)

func ParsePurchaseMethod(s string) (PurchaseMethod, bool) {
	switch PurchaseMethod(s) {
	case MethodCOD, MethodCard, MethodOther:
		return PurchaseMethod(s), true
	}
	return "", false
}

// Submittable reports whether orders can actually be placed with the method.
// Wallet-style methods are listed to the user but never submitted.
func (m PurchaseMethod) Submittable() bool {
	return m == MethodCOD || m == MethodCard
}

func (m PurchaseMethod) String() string {
	return string(m)
}
