package domain

import "strconv"

// The senior ("노인정") game mode only allows words tagged with one of the
// numeric senior topic codes: "0", "10", "20", … "530". Topic codes are
// strings; senior topics are exactly the fully-numeric ones.

// seniorCodes is the closed set of senior topic codes.
var seniorCodes = func() map[string]struct{} {
	set := make(map[string]struct{}, 54)
	for i := 0; i < 54; i++ {
		set[strconv.Itoa(i*10)] = struct{}{}
	}
	return set
}()

// SeniorUsable reports whether a word tagged with the given topic codes may
// be used in the senior game mode: true when at least one code is a senior
// topic code.
func SeniorUsable(topicCodes []string) bool {
	for _, code := range topicCodes {
		if _, ok := seniorCodes[code]; ok {
			return true
		}
	}
	return false
}

// IsSeniorTopicCode reports whether a single topic code is numeric, which
// marks the topic as a senior topic. Words carrying such a topic are
// protected from bulk deletion.
func IsSeniorTopicCode(code string) bool {
	if code == "" {
		return false
	}
	for _, r := range code {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}
