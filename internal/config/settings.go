package config

// GetLogin returns the remembered login details.
func (c *Config) GetLogin() LoginInfo {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Login
}

// RememberLogin stores login details. With remember unset only the server
// and username survive.
func (c *Config) RememberLogin(info LoginInfo, remember bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	if !remember {
		info.PasswordHash = ""
	}
	c.Login = info
	c.RememberMe = remember
}

// ForgetPassword drops the saved password hash, keeping server and name.
func (c *Config) ForgetPassword() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Login.PasswordHash = ""
}

// ClearLogin forgets everything about the last login.
func (c *Config) ClearLogin() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Login = LoginInfo{}
	c.RememberMe = false
}

func (c *Config) GetRememberMe() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.RememberMe
}

func (c *Config) HasAgreedToTerms() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.AgreedToTerms
}

func (c *Config) SetAgreedToTerms(agreed bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.AgreedToTerms = agreed
}

func (c *Config) GetNotificationsEnabled() bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.NotificationsEnabled
}

func (c *Config) SetNotificationsEnabled(enabled bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.NotificationsEnabled = enabled
}

func (c *Config) GetTheme() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Theme
}

func (c *Config) SetTheme(theme string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Theme = theme
}

func (c *Config) GetTransport() string {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Transport
}

func (c *Config) SetTransport(transport string) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Transport = transport
}

func (c *Config) GetColors() Colors {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.Colors
}

// SetColors replaces the highlight colors. Invalid values are rejected
// and leave the current colors in place.
func (c *Config) SetColors(colors Colors) error {
	for _, v := range []string{colors.Whisper, colors.Error, colors.Personal} {
		if !ValidColor(v) {
			return errInvalidColor(v)
		}
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Colors = colors
	return nil
}

// ResetColors restores the default highlight colors.
func (c *Config) ResetColors() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.Colors = Colors{
		Whisper:  DefaultWhisperColor,
		Error:    DefaultErrorColor,
		Personal: DefaultPersonalColor,
	}
}
