package integration_test

const (
	TestHallId   = int64(1)
	TestHallName = "Screen 1"

	TestShowtimeId = int64(1)
)

var (
	TestHallRows    = []string{"A", "B", "C"}
	TestHallColumns = []string{"1", "2", "3", "4"}
)
