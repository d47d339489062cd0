package routeclass

import "testing"

func TestIsPublic(t *testing.T) {
	cases := []struct {
		path   string
		public bool
	}{
		{"/", true},
		{"/login", true},
		{"/confirm", true},
		{"/confirm/", true},
		{"/auth/error", true},
		{"/assets/app.css", true},
		{"/favicon.ico", true},
		{"/articles", true},
		{"/articles/abc-123", true},
		{"/authors", true},
		{"/authors/abc-123", true},
		{"/health", true},
		{"/health/ready", true},
		{"/metrics", true},

		{"/user/profile", false},
		{"/user/articles", false},
		{"/admin/articles", false},
		{"/admin/users", false},
		{"/signout", false},
		{"/api/subscription", false},
		{"/api/notifications", false},
		{"/api/storage/sign", false},
		{"/confirmation", false}, // prefix of /confirm must not leak
		{"/loginx", false},
	}

	for _, tc := range cases {
		if got := IsPublic(tc.path); got != tc.public {
			t.Errorf("IsPublic(%q) = %v, want %v", tc.path, got, tc.public)
		}
	}
}
