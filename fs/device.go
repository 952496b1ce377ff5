package fs

import (
	"fmt"
	"os"
	"strings"

	"github.com/cespare/xxhash/v2"
	"github.com/google/uuid"
)

var machineIDPaths = []string{"/etc/machine-id", "/var/lib/dbus/machine-id"}

// DeviceID returns a stable identifier for the current host.
//
// It combines the hostname with a fingerprint of the machine id. Hosts
// without a machine id get a name-based UUID of the hostname instead.
func DeviceID() string {
	host, err := os.Hostname()
	if err != nil || host == "" {
		host = "localhost"
	}
	return deviceID(host, readMachineID(machineIDPaths))
}

func deviceID(host, machineID string) string {
	if machineID == "" {
		return uuid.NewSHA1(uuid.NameSpaceDNS, []byte(host)).String()
	}
	return fmt.Sprintf("%s-%016x", host, xxhash.Sum64String(machineID))
}

func readMachineID(paths []string) string {
	for _, p := range paths {
		data, err := os.ReadFile(p)
		if err != nil {
			continue
		}
		if id := strings.TrimSpace(string(data)); id != "" {
			return id
		}
	}
	return ""
}
