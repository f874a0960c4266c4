package redis

import "testing"

func TestInitRedis_UnreachableAddrReturnsError(t *testing.T) {
	t.Setenv("REDIS_ADDR", "127.0.0.1:1")

	if err := InitRedis(); err == nil {
		t.Fatalf("expected an error for an unreachable address")
	}
	if Client != nil {
		t.Fatalf("client must stay nil when the connection fails")
	}
}
