package noos

// Status codes returned by driver calls, negated errno values.
const (
	OK         int32 = 0
	EIO        int32 = -5
	ENOMEM     int32 = -12
	EFAULT     int32 = -14
	ENODEV     int32 = -19
	EINVAL     int32 = -22
	EOPNOTSUPP int32 = -95
	ETIMEDOUT  int32 = -110
)

// Failure is the status returned by platform hooks that fail.
const Failure int32 = -1
