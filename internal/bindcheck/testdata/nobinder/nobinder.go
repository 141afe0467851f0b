package nobinder

type Service struct {
	Value string
}

func Bind(s *Service) *Service {
	return s
}
