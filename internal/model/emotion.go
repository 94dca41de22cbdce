package model

// The emotion vocabularies for purchase and sale legs are deliberately
// separate: the feelings that drive an entry are not the ones that drive an
// exit. A purchase leg only ever carries a PurchaseEmotion and a sale leg a
// SaleEmotion; the two sets are closed and never mixed.

// PurchaseEmotion is the emotional state recorded when entering a position.
type PurchaseEmotion string

const (
	PurchaseConfident PurchaseEmotion = "confident"
	PurchaseHopeful   PurchaseEmotion = "hopeful"
	PurchaseExcited   PurchaseEmotion = "excited"
	PurchaseAnxious   PurchaseEmotion = "anxious"
	PurchaseImpatient PurchaseEmotion = "impatient"
	PurchaseCalm      PurchaseEmotion = "calm"
)

// SaleEmotion is the emotional state recorded when exiting (part of) a position.
type SaleEmotion string

const (
	SaleSatisfied  SaleEmotion = "satisfied"
	SaleRelieved   SaleEmotion = "relieved"
	SaleRegretful  SaleEmotion = "regretful"
	SaleFrustrated SaleEmotion = "frustrated"
	SaleAnxious    SaleEmotion = "anxious"
	SaleCalm       SaleEmotion = "calm"
	SaleResigned   SaleEmotion = "resigned"
)

// PurchaseEmotions lists the purchase vocabulary in display order.
func PurchaseEmotions() []PurchaseEmotion {
	return []PurchaseEmotion{
		PurchaseConfident, PurchaseHopeful, PurchaseExcited,
		PurchaseAnxious, PurchaseImpatient, PurchaseCalm,
	}
}

// SaleEmotions lists the sale vocabulary in display order.
func SaleEmotions() []SaleEmotion {
	return []SaleEmotion{
		SaleSatisfied, SaleRelieved, SaleRegretful, SaleFrustrated,
		SaleAnxious, SaleCalm, SaleResigned,
	}
}

// Valid reports whether e belongs to the purchase vocabulary.
func (e PurchaseEmotion) Valid() bool {
	switch e {
	case PurchaseConfident, PurchaseHopeful, PurchaseExcited,
		PurchaseAnxious, PurchaseImpatient, PurchaseCalm:
		return true
	}
	return false
}

// Valid reports whether e belongs to the sale vocabulary.
func (e SaleEmotion) Valid() bool {
	switch e {
	case SaleSatisfied, SaleRelieved, SaleRegretful, SaleFrustrated,
		SaleAnxious, SaleCalm, SaleResigned:
		return true
	}
	return false
}

// Emoji returns the emoji displayed for the purchase emotion.
func (e PurchaseEmotion) Emoji() string {
	switch e {
	case PurchaseConfident:
		return "💪"
	case PurchaseHopeful:
		return "🙏"
	case PurchaseExcited:
		return "🤩"
	case PurchaseAnxious:
		return "😰"
	case PurchaseImpatient:
		return "😤"
	case PurchaseCalm:
		return "😌"
	}
	return ""
}

// Emoji returns the emoji displayed for the sale emotion.
func (e SaleEmotion) Emoji() string {
	switch e {
	case SaleSatisfied:
		return "😊"
	case SaleRelieved:
		return "😮‍💨"
	case SaleRegretful:
		return "😢"
	case SaleFrustrated:
		return "😠"
	case SaleAnxious:
		return "😰"
	case SaleCalm:
		return "😌"
	case SaleResigned:
		return "😞"
	}
	return ""
}

// Label returns the human-readable label for the purchase emotion.
func (e PurchaseEmotion) Label() string {
	switch e {
	case PurchaseConfident:
		return "Confident"
	case PurchaseHopeful:
		return "Hopeful"
	case PurchaseExcited:
		return "Excited"
	case PurchaseAnxious:
		return "Anxious"
	case PurchaseImpatient:
		return "Impatient"
	case PurchaseCalm:
		return "Calm"
	}
	return ""
}

// Label returns the human-readable label for the sale emotion.
func (e SaleEmotion) Label() string {
	switch e {
	case SaleSatisfied:
		return "Satisfied"
	case SaleRelieved:
		return "Relieved"
	case SaleRegretful:
		return "Regretful"
	case SaleFrustrated:
		return "Frustrated"
	case SaleAnxious:
		return "Anxious"
	case SaleCalm:
		return "Calm"
	case SaleResigned:
		return "Resigned"
	}
	return ""
}
