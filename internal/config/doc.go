// Package config загружает конфигурацию эмиттера через viper.
//
// Приоритет источников (от высшего к низшему):
//   - флаги командной строки (BindFlags)
//   - переменные окружения EMITTER_*, а также RABBITMQ_URL и DB_URL
//   - YAML файл (--config или ./task-emitter.yaml)
//   - значения по умолчанию (SetDefaults)
package config
