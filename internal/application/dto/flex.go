package dto

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
)

// FlexBool acepta true/false, 0/1 o "0"/"1".
type FlexBool bool

func (b *FlexBool) UnmarshalJSON(data []byte) error {
	s := string(bytes.Trim(data, `"`))
	switch s {
	case "true", "1":
		*b = true
	case "false", "0", "", "null":
		*b = false
	default:
		return fmt.Errorf("valor booleano inválido: %s", data)
	}
	return nil
}

// FlexString acepta un string o un número JSON (los ids del servicio de correo llegan de ambas formas).
type FlexString string

func (s *FlexString) UnmarshalJSON(data []byte) error {
	if len(data) > 0 && data[0] == '"' {
		var v string
		if err := json.Unmarshal(data, &v); err != nil {
			return err
		}
		*s = FlexString(v)
		return nil
	}
	if string(data) == "null" {
		*s = ""
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(data, &n); err != nil {
		return err
	}
	*s = FlexString(n.String())
	return nil
}

func (s FlexString) String() string { return string(s) }

// Int interpreta el valor como entero; 0 si no es numérico.
func (s FlexString) Int() int {
	n, _ := strconv.Atoi(string(s))
	return n
}
