package seeders

import (
	"os-manager/internal/entities"
)

type defaultUser struct {
	FullName   string
	Email      string
	Role       entities.Role
	Department string
	Nickname   string
}

var defaultUsers = []defaultUser{
	{FullName: "Master Admin", Email: "master@gmail.com", Role: entities.RoleManager, Department: "TI", Nickname: "Boss"},
	{FullName: "Administrador", Email: "admin@ospro.com", Role: entities.RoleManager, Department: "Diretoria"},
	{FullName: "João Silva", Email: "joao@ospro.com", Role: entities.RoleUser, Department: "Manutenção"},
	{FullName: "Ana Souza", Email: "ana@ospro.com", Role: entities.RoleAnalist, Department: "Qualidade"},
}

var demoOrder = entities.ServiceOrder{
	OSNumber:      "1001",
	Title:         "Manutenção de Servidor",
	Description:   "Verificação preventiva do servidor principal",
	ClientName:    "Tech Solutions",
	ClientContact: "contato@techsolutions.com",
	Status:        entities.StatusAgendado,
	Priority:      entities.PriorityAlta,
	Category:      "Infra",
	AssignedTo:    "João Silva",
	CreatedBy:     "master@gmail.com",
}
