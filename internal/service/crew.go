package service

// SuggestCrewSize maps declared item volume to a recommended crew size.
// The small-donation flag wins over everything else; staff may override
// the suggestion afterwards.
func SuggestCrewSize(bags, furniture int, small bool) int {
	if small {
		return 1
	}
	if furniture >= 1 {
		return 2
	}
	if bags >= 8 {
		return 2
	}
	return 1
}
