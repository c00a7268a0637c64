package timegrid

import (
	"fmt"
	"strconv"
	"strings"
)

// Passo fixo da grade de horários. Decisão de produto: serviços longos
// continuam ancorando em marcas de 30 minutos.
const SlotMinutes = 30

// ToMinutes converte "HH:MM" em minutos desde 00:00.
func ToMinutes(hm string) (int, error) {
	parts := strings.SplitN(hm, ":", 2)
	if len(parts) != 2 {
		return 0, fmt.Errorf("invalid time %q", hm)
	}

	h, err := strconv.Atoi(parts[0])
	if err != nil || h < 0 || h > 23 {
		return 0, fmt.Errorf("invalid hour in %q", hm)
	}

	m, err := strconv.Atoi(parts[1])
	if err != nil || m < 0 || m > 59 {
		return 0, fmt.Errorf("invalid minute in %q", hm)
	}

	return h*60 + m, nil
}

// FromMinutes formata minutos desde 00:00 como "HH:MM".
// Não trata estouro além de 24h: o chamador recebe a hora "enrolada"
// (comportamento preservado da versão original).
func FromMinutes(min int) string {
	min %= 24 * 60
	if min < 0 {
		min += 24 * 60
	}
	return fmt.Sprintf("%02d:%02d", min/60, min%60)
}

// AddMinutes soma minutos a um "HH:MM" via aritmética de minuto-do-dia.
func AddMinutes(hm string, delta int) (string, error) {
	base, err := ToMinutes(hm)
	if err != nil {
		return "", err
	}
	return FromMinutes(base + delta), nil
}

// Slots gera as marcas de 30 em 30 minutos de start (inclusive)
// até end (exclusive), em ordem crescente.
func Slots(start, end string) ([]string, error) {
	s, err := ToMinutes(start)
	if err != nil {
		return nil, err
	}
	e, err := ToMinutes(end)
	if err != nil {
		return nil, err
	}

	var out []string
	for cur := s; cur < e; cur += SlotMinutes {
		out = append(out, FromMinutes(cur))
	}
	return out, nil
}

// Overlaps aplica sobreposição de intervalos semiabertos [s1,e1) x [s2,e2).
func Overlaps(start1, end1, start2, end2 int) bool {
	return start1 < end2 && start2 < end1
}
