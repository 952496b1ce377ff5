package fs

// Exported for tests.
var (
	DeviceIDFor   = deviceID
	ReadMachineID = readMachineID
)
