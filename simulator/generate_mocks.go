//go:generate mockgen -destination=mocks/mock_monitor.go -package=mocks github.com/popsim/ppsim/simulator Monitor

package simulator
