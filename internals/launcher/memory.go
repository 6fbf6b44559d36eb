package launcher

import (
	"log"

	"github.com/pbnjay/memory"
	"github.com/shirou/gopsutil/v3/mem"
)

const (
	minDefaultMemory = 1024
	maxDefaultMemory = 8192
)

// DefaultMaxMemory returns 1/4 of the system memory in MiB, at least 1 GiB and at most 8 GiB
func DefaultMaxMemory() int {
	return defaultMaxMemory(memory.TotalMemory())
}

func defaultMaxMemory(total uint64) int {
	quarter := int(total / 1024 / 1024 / 4)
	switch {
	case quarter < minDefaultMemory:
		return minDefaultMemory
	case quarter > maxDefaultMemory:
		return maxDefaultMemory
	}
	return quarter
}

// CheckFreeMemory logs a warning if less than maxMiB memory is available
func CheckFreeMemory(maxMiB int) bool {
	stat, err := mem.VirtualMemory()
	if err != nil {
		log.Printf("[WARN] could not read memory usage: %s", err)
		return true
	}
	free := int(stat.Available / 1024 / 1024)
	if free < maxMiB {
		log.Printf("[WARN] only %d MiB memory available, the game may use up to %d MiB", free, maxMiB)
		return false
	}
	return true
}
