package redis

import "fmt"

// PhoneRateKey throttles order submissions per customer phone.
func PhoneRateKey(phone string) string {
	return fmt.Sprintf("zap_store:rate:phone:%s", phone)
}

// IPRateKey is the fallback when the body carries no usable phone.
func IPRateKey(ip string) string {
	return fmt.Sprintf("zap_store:rate:ip:%s", ip)
}
