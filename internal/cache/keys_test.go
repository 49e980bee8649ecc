package cache

import "testing"

func TestGenerateCacheKey(t *testing.T) {
	tests := []struct {
		name        string
		serviceName string
		objectType  string
		identifier  string
		paramsKey   []string
		expectedKey string
	}{
		{
			name:        "without paramsKey",
			serviceName: "stats",
			objectType:  "user",
			identifier:  "123",
			paramsKey:   nil,
			expectedKey: "exambyte:stats:user:123",
		},
		{
			name:        "with empty paramsKey",
			serviceName: "stats",
			objectType:  "user",
			identifier:  "123",
			paramsKey:   []string{},
			expectedKey: "exambyte:stats:user:123",
		},
		{
			name:        "with multiple paramsKey",
			serviceName: "quiz",
			objectType:  "random",
			identifier:  "u1",
			paramsKey:   []string{"easy", "math"},
			expectedKey: "exambyte:quiz:random:u1:easy_math",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			actualKey := GenerateCacheKey(tt.serviceName, tt.objectType, tt.identifier, tt.paramsKey...)
			if actualKey != tt.expectedKey {
				t.Errorf("GenerateCacheKey() = %v, want %v", actualKey, tt.expectedKey)
			}
		})
	}
}

func TestNamedKeys(t *testing.T) {
	if got := UserStatsKey("u1"); got != "exambyte:stats:user:u1" {
		t.Errorf("UserStatsKey() = %v", got)
	}
	if got := SessionLockKey("s1"); got != "exambyte:lock:session:s1" {
		t.Errorf("SessionLockKey() = %v", got)
	}
}
