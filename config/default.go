package config

func GetDefault() Config {
	return Config{
		CommentChar: "#",
		Policies:    []string{"signed-off"},
	}
}
