package driven

// ResponseCache memoizes raw response bodies of read requests, keyed by the
// canonical endpoint key. Entries never expire; Clear drops all of them.
type ResponseCache interface {
	Get(key string) ([]byte, bool)
	Set(key string, body []byte)
	Has(key string) bool
	Clear()
}
