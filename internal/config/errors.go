package config

import "github.com/ayoisaiah/track/internal/apperr"

var (
	errConfigOption = &apperr.Error{
		Message: "config option error",
	}

	errConfigValidation = &apperr.Error{
		Message: "config validation error",
	}

	errReadConfig = &apperr.Error{
		Message: "reading config file failed",
	}

	errWriteConfig = &apperr.Error{
		Message: "writing config file failed",
	}

	errUnknownBackend = &apperr.Error{
		Message: "unknown backend %q: must be one of %s",
	}

	errInvalidWindow = &apperr.Error{
		Message: "report window must be positive, got %v",
	}

	errTildePath = &apperr.Error{
		Message: "%s path %q starts with '~' which is not expanded: use an absolute path",
	}
)
