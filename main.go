package main

import "github.com/felipesobrinho-spec/fitness-90-day-tracker2/cmd/fit90"

func main() {
	fit90.Execute()
}
