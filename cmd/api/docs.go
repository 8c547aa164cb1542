package main

// @title           Condomínio API
// @version         1.0
// @description     API de gestão de associações de proprietários: blocos, apartamentos, despesas, cotas e pagamentos

// @contact.name   Suporte
// @contact.email  suporte@erp-condominio.ro

// @host      localhost:8080
// @BasePath  /api/v1

// @securityDefinitions.apikey BearerAuth
// @in header
// @name Authorization
// @description Cabeçalho de autenticação JWT usando o esquema Bearer. Exemplo: "Bearer {token}"
