package cliutils

// Contains indicates if a string slice 'a' contains the string s
func Contains(a []string, s string) bool {
	for _, n := range a {
		if s == n {
			return true
		}
	}
	return false
}
