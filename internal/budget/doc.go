// Package budget bounds the use of external lesson generation.
//
// Tracker keeps daily and monthly spend counters and decides whether another
// paid generation call may be made. RateLimiter counts requests per client in
// minute, hour and day windows. Both keep their counters in process memory.
package budget
