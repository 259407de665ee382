package utils

import "regexp"

// Registration plates follow the common Indian format, e.g. KA05MH1234.
var vehicleNumberRe = regexp.MustCompile(`^[A-Z]{2}[0-9]{2}[A-Z]{2}[0-9]{4}$`)

func ValidVehicleNumber(s string) bool {
	return vehicleNumberRe.MatchString(s)
}
