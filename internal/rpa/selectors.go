package rpa

import "github.com/MKhiriev/go-rpa-cadastro/internal/browser"

// registerFrameID is the iframe hosting the registration form.
const registerFrameID = "registerIframe"

// Login page.
var (
	selUsername = browser.XPath("username field", "//input[@id='username']")
	selPassword = browser.XPath("password field", "//input[@id='password']")
	selLogin    = browser.XPath("login button", "//button[contains(normalize-space(), 'Entrar')]")
)

// Dashboard.
var (
	selDownload = browser.XPath("download button", "//a[contains(normalize-space(), 'Baixar Planilha')]")
	selOpenForm = browser.XPath("register link", "//a[contains(normalize-space(), 'Cadastrar')]")
	selLogout   = browser.XPath("logout link", "//a[contains(normalize-space(), 'Sair')]")
)

// Registration form, inside registerFrameID. Inputs are found through the
// "for" attribute of their label.
var (
	selName    = labelled("name field", "Nome")
	selSurname = labelled("surname field", "Sobrenome")
	selEmail   = labelled("email field", "Email")
	selRole    = labelled("role field", "Cargo")
	selCompany = labelled("company field", "Empresa")
	selAddress = labelled("address field", "Endereço")
	selPhone   = labelled("phone field", "Telefone")
	selSubmit  = browser.XPath("submit button", "//button[contains(normalize-space(), 'Cadastrar Funcionário')]")
)

func labelled(name, label string) browser.Selector {
	return browser.XPath(name, "//*[@id=//label[contains(normalize-space(), '"+label+"')]/@for]")
}
